package domain

// ReportRequest representa o pedido de relatório de campanhas já validado.
// Limit e Offset são nil quando o chamador não os informou.
type ReportRequest struct {
	StartDate   string
	EndDate     string
	AdAccountID string
	CampaignIDs []string
	Limit       *int
	Offset      *int
}

// ReportResult é o payload devolvido pela plataforma, repassado sem alterações
type ReportResult []byte

// Credentials guarda as credenciais da Universal Ads carregadas na inicialização
type Credentials struct {
	APIKey     string
	PrivateKey string
}

// Missing lista as variáveis ausentes, na ordem em que devem ser configuradas
func (c Credentials) Missing() []string {
	missing := make([]string, 0, 2)
	if c.APIKey == "" {
		missing = append(missing, "UNIVERSAL_ADS_API_KEY")
	}
	if c.PrivateKey == "" {
		missing = append(missing, "UNIVERSAL_ADS_PRIVATE_KEY")
	}
	return missing
}

// IsComplete indica se as duas credenciais estão presentes
func (c Credentials) IsComplete() bool {
	return len(c.Missing()) == 0
}
