package stats

// CountryPopulation returns the embedded residents-per-country table. The
// names match the "Country/Region" column of the global feed.
func CountryPopulation() *Population {
	p := &Population{Source: "embedded country table"}
	for _, e := range countryResidents {
		p.Regions = append(p.Regions, &Region{Name: e.name, Value: e.value})
	}
	return p
}

// AgeGroupPopulation returns the German population per age band
// (Destatis 12411-0005). The "unbekannt" band uses a nominal size of 100000
// so its normalization factor is 1.
func AgeGroupPopulation() *Population {
	p := &Population{Source: "embedded age band table"}
	for _, e := range ageGroupResidents {
		p.Regions = append(p.Regions, &Region{Name: e.name, Value: e.value})
	}
	return p
}

type residents struct {
	name  string
	value float64
}

var ageGroupResidents = [...]residents{
	{"A00-A04", 3969138},
	{"A05-A14", 7508662},
	{"A15-A34", 18921292},
	{"A35-A59", 28666166},
	{"A60-A79", 18153339},
	{"A80+", 5936434},
	{"unbekannt", 100000},
}

var countryResidents = [...]residents{
	{"Afghanistan", 32890171},
	{"Albania", 2845955},
	{"Algeria", 43900000},
	{"Andorra", 77543},
	{"Angola", 31127674},
	{"Antigua and Barbuda", 97895},
	{"Argentina", 45376763},
	{"Armenia", 2963000},
	{"Australia", 25686762},
	{"Austria", 8915382},
	{"Azerbaijan", 10095900},
	{"Bahamas", 385000},
	{"Bahrain", 1503091},
	{"Bangladesh", 169536502},
	{"Barbados", 287025},
	{"Belarus", 9408400},
	{"Belgium", 11535652},
	{"Belize", 419199},
	{"Benin", 12114193},
	{"Bhutan", 771612},
	{"Bolivia", 11670000},
	{"Bosnia and Herzegovina", 11633371},
	{"Botswana", 3332593},
	{"Brazil", 209000000},
	{"Brunei", 212250204},
	{"Bulgaria", 6927000},
	{"Burkina Faso", 20900000},
	{"Burma", 54410000},
	{"Burundi", 21510181},
	{"Cabo Verde", 12309600},
	{"Cambodia", 15288489},
	{"Cameroon", 24348251},
	{"Canada", 38221221},
	{"Central African Republic", 5633412},
	{"Chad", 16244513},
	{"Chile", 19458310},
	{"China", 1405035800},
	{"Colombia", 50372424},
	{"Comoros", 758316},
	{"Congo (Brazzaville)", 5518000},
	{"Congo (Kinshasa)", 89560000},
	{"Costa Rica", 5111238},
	{"Cote d'Ivoire", 26380000},
	{"Croatia", 4058165},
	{"Cuba", 11193470},
	{"Cyprus", 1200000},
	{"Czechia", 10699142},
	{"Denmark", 5825337},
	{"Diamond Princess", 1000},
	{"Djibouti", 962452},
	{"Dominica", 71808},
	{"Dominican Republic", 10448499},
	{"Ecuador", 17596656},
	{"Egypt", 101096318},
	{"El Salvador", 6765753},
	{"Equatorial Guinea", 1454789},
	{"Eritrea", 3546000},
	{"Estonia", 1328976},
	{"Eswatini", 1093238},
	{"Ethiopia", 100829000},
	{"Fiji", 889327},
	{"Finland", 5503335},
	{"France", 67132000},
	{"Gabon", 2176766},
	{"Gambia", 2335504},
	{"Georgia", 3716858},
	{"Germany", 83122889},
	{"Ghana", 30955202},
	{"Greece", 10724599},
	{"Grenada", 112003},
	{"Guatemala", 16858333},
	{"Guinea", 12559623},
	{"Guinea-Bissau", 1624945},
	{"Guyana", 744962},
	{"Haiti", 11743017},
	{"Holy See", 130000},
	{"Honduras", 9304380},
	{"Hungary", 9769526},
	{"Iceland", 366700},
	{"India", 1368870621},
	{"Indonesia", 269603400},
	{"Iran", 83895801},
	{"Iraq", 40150200},
	{"Ireland", 4977400},
	{"Israel", 9269200},
	{"Italy", 60062012},
	{"Jamaica", 2734093},
	{"Japan", 125880000},
	{"Jordan", 10799264},
	{"Kazakhstan", 18801984},
	{"Kenya", 47564296},
	{"Korea, South", 51600000},
	{"Kosovo", 1782115},
	{"Kuwait", 4464521},
	{"Kyrgyzstan", 6596500},
	{"Laos", 7231210},
	{"Latvia", 1898400},
	{"Lebanon", 6825442},
	{"Lesotho", 2007201},
	{"Liberia", 4568298},
	{"Libya", 6871287},
	{"Liechtenstein", 38749},
	{"Lithuania", 2795334},
	{"Luxembourg", 626108},
	{"Madagascar", 26251309},
	{"Malawi", 19129952},
	{"Malaysia", 32700590},
	{"Maldives", 383135},
	{"Mali", 20250833},
	{"Malta", 514564},
	{"Marshall Islands", 58000},
	{"Mauritania", 4173077},
	{"Mauritius", 1266000},
	{"Mexico", 127792286},
	{"Moldova", 2640438},
	{"Monaco", 38100},
	{"Mongolia", 3344518},
	{"Montenegro", 621873},
	{"Morocco", 36056313},
	{"Mozambique", 30066648},
	{"MS Zaandam", 5000},
	{"Namibia", 2504498},
	{"Nepal", 29996478},
	{"Netherlands", 17523481},
	{"New Zealand", 5093882},
	{"Nicaragua", 6527691},
	{"Niger", 23196002},
	{"Nigeria", 206139587},
	{"North Macedonia", 2076255},
	{"Norway", 5374807},
	{"Oman", 4445262},
	{"Pakistan", 220892331},
	{"Panama", 4278500},
	{"Papua New Guinea", 8935000},
	{"Paraguay", 7252672},
	{"Peru", 32625948},
	{"Philippines", 109345417},
	{"Poland", 38352000},
	{"Portugal", 10295909},
	{"Qatar", 2723624},
	{"Romania", 19317984},
	{"Russia", 146748590},
	{"Rwanda", 12663116},
	{"Saint Kitts and Nevis", 52823},
	{"Saint Lucia", 178696},
	{"Saint Vincent and the Grenadines", 110696},
	{"Samoa", 196000},
	{"San Marino", 33630},
	{"Sao Tome and Principe", 21024},
	{"Saudi Arabia", 34218169},
	{"Senegal", 16705608},
	{"Serbia", 6926705},
	{"Seychelles", 98462},
	{"Sierra Leone", 8100318},
	{"Singapore", 5685807},
	{"Slovakia", 5460136},
	{"Slovenia", 2097195},
	{"Solomon Islands", 694619},
	{"Somalia", 15893219},
	{"South Africa", 59622350},
	{"South Sudan", 13249924},
	{"Spain", 47329981},
	{"Sri Lanka", 21803000},
	{"Sudan", 42938585},
	{"Suriname", 590100},
	{"Sweden", 10367232},
	{"Switzerland", 8632703},
	{"Syria", 17500657},
	{"Taiwan*", 23568378},
	{"Tajikistan", 9313800},
	{"Tanzania", 57637628},
	{"Thailand", 66568817},
	{"Timor-Leste", 1200000},
	{"Togo", 7706000},
	{"Trinidad and Tobago", 1366725},
	{"Tunisia", 11708370},
	{"Turkey", 83154997},
	{"Uganda", 41583600},
	{"Ukraine", 41723998},
	{"United Arab Emirates", 9366829},
	{"United Kingdom", 66796807},
	{"Uruguay", 3530912},
	{"US", 330538821},
	{"Uzbekistan", 34488572},
	{"Venezuela", 28435943},
	{"Vietnam", 96483981},
	{"West Bank and Gaza", 1155800},
	{"Western Sahara", 597000},
	{"Yemen", 29825968},
	{"Zambia", 17885422},
	{"Zimbabwe", 15473818},
}
