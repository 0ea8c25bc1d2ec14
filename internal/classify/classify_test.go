package classify

import "testing"

func TestFolderCategory(t *testing.T) {
	tests := []struct {
		folder string
		want   string
	}{
		{"PDFs_Procesados_Certificados", CategoryCertificados},
		{"certificados_2023", CategoryCertificados},
		{"5rentas_enero", Category5Rentas},
		{"Rentas_Quinta", Category5Rentas},
		{"Constancias_Baja", CategoryConstancias},
		{"PDFs_Procesados_Trabajo", CategoryCertificados},
		{"Facturas", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			if got := FolderCategory(tt.folder); got != tt.want {
				t.Errorf("FolderCategory(%q) = %q, want %q", tt.folder, got, tt.want)
			}
		})
	}
}

func TestFolderCategory_SpecificRulesBeatCatchAll(t *testing.T) {
	// "trabajo" is a catch-all for certificates; a folder naming both a
	// specific type and "trabajo" must classify by the specific rule.
	if got := FolderCategory("constancias_trabajo"); got != CategoryConstancias {
		t.Errorf("FolderCategory = %q, want %q", got, CategoryConstancias)
	}
}
