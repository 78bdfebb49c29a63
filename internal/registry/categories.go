package registry

var defaultOrder = []string{"Broad", "Sector", "Strategy", "Thematic"}

// Identifiers match the short column names of the backend's price sheet.
var defaultCategories = map[string][]string{
	"Broad": {
		"N50", "NN50", "N100", "N200", "NTOTLM", "N500", "NMC5025", "N500EQ", "NMC150", "NMC50",
		"NMCSEL", "NMC100", "NSC250", "NSC50", "NSC100", "NMICRO", "NLMC250", "NMSC400", "NT10EWT",
		"NT15EWT", "NT20EWT", "N50EQWGT", "NIFTY500 EQUAL WEIGHT.1",
	},
	"Sector": {
		"NAUTO", "NBANK", "NCHEM", "NFINSERV", "NFINS2550", "NFINSXB", "NFMCG", "NHEALTH", "NTECH",
		"NMEDIA", "NMETAL", "NPHARMA", "NPVTBANK", "NPSUBANK", "NREALTY", "NCONDUR", "NOILGAS",
		"NMSFINS", "NMSHC", "NMSITT", "NCAPMRKT", "NCOMM", "NSERVSEC",
	},
	"Strategy": {
		"N100EWT", "N100LV30", "N200M30", "N200AL30", "N100AL30", "NAL50", "NALV30", "NAQLV30",
		"NAQVLV30", "NDIVOP50", "NLV50", "NHBET50", "NGROW15", "N100QL30", "N200QL30", "NQLLV30",
		"N500QL50", "N500M50", "N500LV50", "N500V50", "N500MQLV", "N500MQ50", "N50V20", "N200V30",
		"NMC150M50", "NMC150Q", "N500FQ30", "NSC250Q", "NMSCMQ", "NSC250MQ", "N100LIQ15", "NMCL15",
		"N50SH", "N500SH", "NSH25",
	},
	"Thematic": {
		"NICON", "NIDEF", "NIDIGI", "NIIL", "NIMFG", "NCPSE", "NENRGY", "NEVNAA", "NHOUS", "N100ESG",
		"N100ESGE", "N100ESGSL", "NINFRA", "NTOUR", "NINACON", "NCHOUS", "NMSICON", "NMOBIL",
		"NNCCON", "NRURAL", "NTRANS", "NIINT", "NPSE", "NMNC", "NREIT", "NIPO", "NSMEE", "NIRLPSU",
		"NBIRLA", "NMAHIN", "NTATA", "NTATA25", "NMAATR", "NMF5032", "NINF5032", "NWAVES", "DSPQ",
		"DSP ELSS", "KBIK CON", "KBIK GOLD", "AXISINVE", "UTI FLEX", "ICICI SIL", "N10YRGS",
		"NIFTY 10 YR BENCHMARK G-SEC.1",
	},
}
