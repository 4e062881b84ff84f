package booking

type CustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type CreateBookingRequest struct {
	VehicleID         string        `json:"vehicle_id" binding:"required"`
	PickupDate        string        `json:"pickup_date" binding:"required"`
	PickupTime        string        `json:"pickup_time"`
	DropoffDate       string        `json:"dropoff_date" binding:"required"`
	DropoffTime       string        `json:"dropoff_time"`
	PickupLocationID  string        `json:"pickup_location_id"`
	DropoffLocationID string        `json:"dropoff_location_id"`
	Customer          CustomerInput `json:"customer" binding:"required"`
	Notes             string        `json:"notes"`
}
