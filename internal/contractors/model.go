package contractors

import "time"

// Service ↔ Store で使うモデル（必要最小限）
type Contractor struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (c Contractor) toDTO() ContractorResponse {
	return ContractorResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
