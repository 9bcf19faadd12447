package model

// OfficeLocation 办公地点模型
// 全局至多一个处于激活状态，激活新地点时其余全部停用
type OfficeLocation struct {
	BaseModel
	Name            string  `gorm:"type:varchar(128);not null" json:"name"`
	Latitude        float64 `gorm:"type:numeric(10,7);not null" json:"latitude"`
	Longitude       float64 `gorm:"type:numeric(10,7);not null" json:"longitude"`
	RadiusMeters    float64 `gorm:"type:numeric(8,2);not null" json:"radius_meters"`
	DetectionMethod string  `gorm:"type:varchar(32);not null;default:'gps'" json:"detection_method"`
	AccuracyMeters  float64 `gorm:"type:numeric(8,2);not null;default:0" json:"accuracy_meters"`
	IsActive        bool    `gorm:"not null;default:false;index:idx_office_locations_active" json:"is_active"`
}

// TableName 指定表名
func (OfficeLocation) TableName() string {
	return "office_locations"
}
