package models

// MediaType is the declared type of a RawDocument.
type MediaType string

// Supported media types
const (
	MediaTypePDF     MediaType = "application/pdf"
	MediaTypeXML     MediaType = "application/xml"
	MediaTypeTextXML MediaType = "text/xml"
)

// Installment statuses
const (
	InstallmentPending = "pending"
	InstallmentPaid    = "paid"
	InstallmentOverdue = "overdue"
)

// Simulation statuses
const (
	SimulationDraft    = "draft"
	SimulationApproved = "approved"
)

// Default descriptions for rows that carry no text of their own
const (
	DefaultDebtDescription        = "Dívida"
	DefaultInstallmentDescription = "Parcela"
	DefaultAmountOnlyDescription  = "Parcela/Taxa"
)

// CurrencyBRL is the only currency statements are issued in.
const CurrencyBRL = "BRL"

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

// IsXML reports whether the media type is one of the XML types.
func (m MediaType) IsXML() bool {
	return m == MediaTypeXML || m == MediaTypeTextXML
}

// IsSupported reports whether a parser exists for the media type.
func (m MediaType) IsSupported() bool {
	return m == MediaTypePDF || m.IsXML()
}
