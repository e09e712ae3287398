package dto

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReportQuery holds the optional report query parameters.
// Threshold stays a string so an invalid value can be reported as such.
type ReportQuery struct {
	Threshold string `form:"threshold"`
	Format    string `form:"format"`
}
