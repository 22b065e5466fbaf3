// =============================================================================
// Cartorio Audit - Embedded Domain Tables
// =============================================================================
//
// Default domain definitions and code->label tables for the four filing
// formats. These mirror the layouts practiced by the registry information
// systems; installations with local code tables override them via the
// tables_file setting.
//
// =============================================================================

package config

// Domain names accepted by the engines and the CLI.
const (
	DomainNotas      = "notas"
	DomainProcuracao = "procuracao"
	DomainImoveis    = "imoveis"
	DomainDOI        = "doi"
)

// DefaultTables returns the embedded domain configuration.
func DefaultTables() *Tables {
	return &Tables{
		Domains: map[string]Domain{
			DomainNotas: {
				Name:    DomainNotas,
				RootTag: "extrato",
				ActTag:  "ato",
				// Book/page pair.
				KeyFields: []string{"livro", "folha"},
				KeyLabels: []string{"Livro", "Folha"},
				HeaderFields: []string{
					"livro", "folha", "tipoAto", "natureza",
					"dataAto", "valorNegocio",
				},
				PartyNameField:    "nomeParte",
				PartyDocTypeField: "tipoDocumentoParte",
				PartyDocField:     "documentoParte",
				PartyRoleField:    "papelParte",
				PartyAuxFields: []string{
					"dataNascimentoParte", "seccionalOAB",
				},
			},
			DomainProcuracao: {
				Name:    DomainProcuracao,
				RootTag: "extrato",
				ActTag:  "ato",
				// Book+complement / page+complement quadruple.
				KeyFields: []string{
					"livro", "livroComplemento",
					"folha", "folhaComplemento",
				},
				KeyLabels: []string{
					"Livro", "Compl.", "Folha", "Compl.",
				},
				HeaderFields: []string{
					"livro", "livroComplemento",
					"folha", "folhaComplemento",
					"tipoAto", "dataAto", "subcodigo",
					"livroAnterior", "folhaAnterior", "cartorioAnterior",
				},
				PartyNameField:    "nomeParte",
				PartyDocTypeField: "tipoDocumentoParte",
				PartyDocField:     "documentoParte",
				PartyRoleField:    "papelParte",
				PartyAuxFields: []string{
					"dataNascimentoParte", "seccionalOAB",
				},
			},
			DomainImoveis: {
				Name:    DomainImoveis,
				RootTag: "extrato",
				ActTag:  "ato",
				KeyFields: []string{"livro", "folha"},
				KeyLabels: []string{"Livro", "Folha"},
				HeaderFields: []string{
					"livro", "folha", "tipoAto", "natureza",
					"dataAto", "cib", "matricula", "valorNegocio",
				},
				PartyNameField:    "nomeParte",
				PartyDocTypeField: "tipoDocumentoParte",
				PartyDocField:     "documentoParte",
				PartyRoleField:    "papelParte",
				PartyAuxFields: []string{
					"dataNascimentoParte", "seccionalOAB",
					"percentualParticipacao",
				},
			},
			DomainDOI: {
				Name:    DomainDOI,
				JSONLot: true,
				// One declaration per grouping key.
				KeyFields: []string{"numeroDeclaracao"},
				KeyLabels: []string{"Declaração"},
				HeaderFields: []string{
					"numeroDeclaracao", "tipoAto", "cib", "matricula",
					"dataNegocio", "dataLavratura", "valorNegocio",
					"participacaoNaoInformada",
				},
				PartyNameField:    "nomeParte",
				PartyDocTypeField: "tipoDocumentoParte",
				PartyDocField:     "documentoParte",
				PartyRoleField:    "papelParte",
				PartyAuxFields: []string{
					"percentualParticipacao",
					"participacaoNaoInformadaParte",
				},
			},
		},

		Tabelas: map[string]DomainTables{
			DomainNotas: {
				TipoAto: map[string]string{
					"11": "Escritura de Compra e Venda",
					"12": "Escritura de Doação",
					"13": "Escritura de Divórcio",
					"14": "Testamento Público",
					"15": "Ata Notarial",
				},
				Naturezas: map[string]string{
					"1": "Onerosa",
					"2": "Gratuita",
					"3": "Mista",
				},
				Papeis: map[string]string{
					"1": "Outorgante",
					"2": "Outorgado",
					"3": "Interveniente",
					"5": "Testemunha",
					"7": "Procurador",
				},
				PapeisPorTipo: map[string][]string{
					"11": {"1", "2", "3", "7"},
					"12": {"1", "2", "3", "7"},
					"13": {"1", "2", "5", "7"},
					"14": {"1", "5"},
					"15": {"1", "3"},
				},
				NaturezaObrigatoriaPara: []string{"11", "12"},
				MinPartes: map[string]int{
					"13": 2,
					"14": 1,
					"15": 1,
				},
				MinPartesDefault: 2,
			},
			DomainProcuracao: {
				TipoAto: map[string]string{
					"01": "Procuração",
					"02": "Substabelecimento",
					"03": "Revogação",
					"04": "Renúncia",
				},
				Papeis: map[string]string{
					"1": "Outorgante",
					"2": "Outorgado",
					"7": "Procurador",
				},
				PapeisPorTipo: map[string][]string{
					"01": {"1", "2", "7"},
					"02": {"1", "2", "7"},
					"03": {"1", "2"},
					"04": {"1", "2"},
				},
				ReferenteObrigatorioPara: []string{"02", "03", "04"},
				MinPartesDefault:         2,
			},
			DomainImoveis: {
				TipoAto: map[string]string{
					"21": "Registro de Compra e Venda",
					"22": "Registro de Doação",
					"23": "Averbação",
					"24": "Registro de Hipoteca",
				},
				Naturezas: map[string]string{
					"1": "Onerosa",
					"2": "Gratuita",
				},
				Papeis: map[string]string{
					"1": "Transmitente",
					"2": "Adquirente",
					"3": "Interveniente",
					"7": "Procurador",
				},
				PapeisPorTipo: map[string][]string{
					"21": {"1", "2", "3", "7"},
					"22": {"1", "2", "3", "7"},
					"23": {"1", "3"},
					"24": {"1", "2", "7"},
				},
				NaturezaObrigatoriaPara: []string{"21", "22"},
				MinPartes: map[string]int{
					"23": 1,
				},
				MinPartesDefault: 2,
			},
			DomainDOI: {
				TipoAto: map[string]string{
					"1": "Compra e Venda",
					"2": "Doação",
					"3": "Permuta",
					"4": "Integralização de Capital",
				},
				Papeis: map[string]string{
					"1": "Alienante",
					"2": "Adquirente",
				},
				PapeisPorTipo: map[string][]string{
					"1": {"1", "2"},
					"2": {"1", "2"},
					"3": {"1", "2"},
					"4": {"1", "2"},
				},
				MinPartesDefault: 2,
			},
		},

		Fundos: map[string]float64{
			"FUNDESP": 10,
			"FUNCOMP": 6,
			"FUNEMP":  3,
			"FERMOJU": 2,
			"FADEP":   2,
			"FUNSEG":  1.25,
		},
		FundosOrdem: []string{
			"FUNDESP", "FUNCOMP", "FUNEMP", "FERMOJU", "FADEP", "FUNSEG",
		},
	}
}
