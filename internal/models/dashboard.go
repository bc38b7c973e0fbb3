package models

// DashboardStats is the headline counters block for today.
type DashboardStats struct {
	TotalStudies int64   `json:"totalStudies"`
	TotalImages  int64   `json:"totalImages"`
	TotalSizeMB  float64 `json:"totalSizeMB"`
}

// ModalityCount is one bar of the studies-by-modality chart.
type ModalityCount struct {
	Modality   string `json:"modality"`
	StudyCount int64  `json:"studyCount"`
}

// SourceAECount is one bar of the images-by-source-AE chart.
type SourceAECount struct {
	SourceAE   string `json:"source_ae"`
	ImageCount int64  `json:"imageCount"`
}

// RecentStudy is one row of the latest-studies panel.
type RecentStudy struct {
	PtnName         string `json:"ptn_name"`
	StudyDesc       string `json:"study_desc"`
	AccessionNumber string `json:"accession_number"`
	StudyDate       int    `json:"study_date"`
	StudyTime       string `json:"study_time"`
}

// WorklistStatusCounts buckets today's worklist entries by performed
// status. NULL and empty statuses count as SCHEDULED.
type WorklistStatusCounts struct {
	Scheduled  int64 `json:"SCHEDULED"`
	InProgress int64 `json:"IN PROGRESS"`
	Completed  int64 `json:"COMPLETED"`
}

// DashboardResponse is the composite dashboard payload.
type DashboardResponse struct {
	Stats             DashboardStats       `json:"stats"`
	ModalityChartData []ModalityCount      `json:"modalityChartData"`
	SourceAEChartData []SourceAECount      `json:"sourceAEChartData"`
	RecentStudies     []RecentStudy        `json:"recentStudies"`
	WorklistStats     WorklistStatusCounts `json:"worklistStats"`
}
