package services

import (
	"fmt"

	"ollamadash/models"
)

const (
	Byte     = 1
	KiloByte = Byte * 1000
	MegaByte = KiloByte * 1000
	GigaByte = MegaByte * 1000
	TeraByte = GigaByte * 1000
)

// ComputeStats aggregates the dashboard figures for models. A model counts
// as active when upstream reported details for it.
func ComputeStats(list []models.Model) models.DashboardStats {
	var total int64
	active := 0
	for _, m := range list {
		total += m.Size
		if m.Details != nil {
			active++
		}
	}

	return models.DashboardStats{
		TotalModels:  len(list),
		TotalSize:    fmt.Sprintf("%.2f GB", float64(total)/GigaByte),
		ActiveModels: active,
	}
}

func HumanBytes(b int64) string {
	switch {
	case b >= TeraByte:
		return fmt.Sprintf("%.1f TB", float64(b)/TeraByte)
	case b >= GigaByte:
		return fmt.Sprintf("%.1f GB", float64(b)/GigaByte)
	case b >= MegaByte:
		return fmt.Sprintf("%.1f MB", float64(b)/MegaByte)
	case b >= KiloByte:
		return fmt.Sprintf("%.1f KB", float64(b)/KiloByte)
	default:
		return fmt.Sprintf("%d B", b)
	}
}
