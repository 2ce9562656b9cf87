package employee

type CreateEmployeeRequest struct {
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name"`
	ICPassport string `json:"ic_passport" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=hr employee"`
	Password   string `json:"password" binding:"required,min=8"`
}

type UpdateEmployeeRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name"`
	ICPassport string `json:"ic_passport" binding:"required"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ICPassport string `json:"ic_passport"`
	Role       string `json:"role"`
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Email:      e.Email,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		ICPassport: e.ICPassport,
		Role:       e.Role,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, mapToResponse(e))
	}
	return out
}
