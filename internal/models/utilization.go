package models

// UtilizationSummary is one row of the precomputed per-study storage
// summary maintained by the PACS archive. Read-only here.
type UtilizationSummary struct {
	PtnID           string `gorm:"column:ptn_id" json:"ptn_id"`
	PtnName         string `gorm:"column:ptn_name" json:"ptn_name"`
	AccessionNumber string `gorm:"column:accession_number" json:"accession_number"`
	StudyDesc       string `gorm:"column:study_desc" json:"study_desc"`
	StudyDate       int    `gorm:"column:study_date" json:"study_date"`
	StudyTime       string `gorm:"column:study_time" json:"study_time"`
	Modality        string `gorm:"column:modality" json:"modality"`
	SourceAE        string `gorm:"column:source_ae" json:"source_ae"`
	StudyCount      int    `gorm:"column:study_count" json:"study_count"`
	ImageCount      int    `gorm:"column:image_count" json:"image_count"`
	TotalSizeBytes  int64  `gorm:"column:total_size_bytes" json:"total_size_bytes"`
}

// TableName overrides the table name
func (UtilizationSummary) TableName() string {
	return "study_utilization_summary"
}
