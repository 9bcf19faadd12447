package dto

// ========== Office 相关 DTO ==========

// CreateOfficeRequest 创建办公地点请求
type CreateOfficeRequest struct {
	Name            string  `json:"name"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	RadiusMeters    float64 `json:"radius_meters"`
	DetectionMethod string  `json:"detection_method"`
	AccuracyMeters  float64 `json:"accuracy_meters"`
	Activate        bool    `json:"activate"`
}

// OfficeData 办公地点数据
type OfficeData struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
}

// GeofenceResult 地理围栏判定结果
type GeofenceResult struct {
	Allowed        bool    `json:"allowed"`
	DistanceMeters float64 `json:"distance_meters"`
	RadiusMeters   float64 `json:"radius_meters"`
	ExcessMeters   float64 `json:"excess_meters"`
	OfficeID       int64   `json:"office_id"`
	OfficeName     string  `json:"office_name"`
}
