package dto

type CustomerListResponseDTO struct {
	List       []CustomerDTO `json:"list"`
	TotalCount uint64        `json:"total_count"`
}
