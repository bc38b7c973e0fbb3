package models

// WorklistEntry is one scheduled procedure row from the modality worklist
// table. The table is populated by the PACS side; this system only reads
// it. Dates are YYYYMMDD integers, times are HHMMSS strings as stored.
type WorklistEntry struct {
	StudyInstanceUID string `gorm:"column:study_instance_uid;primaryKey" json:"study_instance_uid"`
	PatientID        string `gorm:"column:patient_id" json:"patient_id"`
	PatientName      string `gorm:"column:patient_name" json:"patient_name"`
	AccessionNum     string `gorm:"column:accession_num" json:"accession_num"`
	Modality         string `gorm:"column:modality" json:"modality"`
	SchedStartDate   int    `gorm:"column:sched_start_date" json:"sched_start_date"`
	SchedStartTime   string `gorm:"column:sched_start_time" json:"sched_start_time"`
	PerfrmdStatus    string `gorm:"column:perfrmd_status" json:"perfrmd_status"`
	PerfrmdAET       string `gorm:"column:perfrmd_aet" json:"perfrmd_aet"`
	SchedProcDesc    string `gorm:"column:sched_proc_desc" json:"sched_proc_desc"`
	PerfrmdEndDate   int    `gorm:"column:perfrmd_end_date" json:"perfrmd_end_date"`
	PerfrmdEndTime   string `gorm:"column:perfrmd_end_time" json:"perfrmd_end_time"`
}

// TableName overrides the table name
func (WorklistEntry) TableName() string {
	return "worklist"
}
