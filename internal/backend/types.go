package backend

import "strconv"

// ListParams carries the pagination and optional status filter the backend's
// list endpoints accept.
type ListParams struct {
	Page   int
	Limit  int
	Status string
}

// Donation request statuses as stored by the backend.
const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "inprogress"
	RequestStatusDone       = "done"
	RequestStatusCanceled   = "canceled"
)

// DonationRequest is a blood donation request as the backend returns it.
type DonationRequest struct {
	ID                string `json:"_id"`
	RequesterName     string `json:"requesterName"`
	RequesterEmail    string `json:"requesterEmail"`
	RecipientName     string `json:"recipientName"`
	RecipientDistrict string `json:"recipientDistrict"`
	RecipientUpazila  string `json:"recipientUpazila"`
	RecipientImage    string `json:"recipientImage"`
	HospitalName      string `json:"hospitalName"`
	Address           string `json:"address"`
	BloodGroup        string `json:"bloodGroup"`
	DonationDate      string `json:"donationDate"`
	DonationTime      string `json:"donationTime"`
	Message           string `json:"requestMessage"`
	Status            string `json:"status"`
	DonorName         string `json:"donorName"`
	DonorEmail        string `json:"donorEmail"`
}

// CreateDonationRequest is the payload for creating a donation request. The
// backend sets the initial status to pending and fills requester fields from
// the bearer token.
type CreateDonationRequest struct {
	RecipientName     string `json:"recipientName"`
	RecipientDistrict string `json:"recipientDistrict"`
	RecipientUpazila  string `json:"recipientUpazila"`
	RecipientImage    string `json:"recipientImage,omitempty"`
	HospitalName      string `json:"hospitalName"`
	Address           string `json:"address"`
	BloodGroup        string `json:"bloodGroup"`
	DonationDate      string `json:"donationDate"`
	DonationTime      string `json:"donationTime"`
	Message           string `json:"requestMessage,omitempty"`
}

// Donor is a donor profile row from the public donor search.
type Donor struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

// DonorFilter narrows the public donor search. Empty fields are omitted.
type DonorFilter struct {
	BloodGroup string
	District   string
	Upazila    string
}

// Funding is a funding record.
type Funding struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// StatsOverview is the admin dashboard summary.
type StatsOverview struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalRequests int     `json:"totalRequests"`
	TotalFunding  float64 `json:"totalFunding"`
}

// ProfilePatch carries the self-editable profile fields for PATCH /users/me.
// Pointer fields distinguish "unset" from "clear".
type ProfilePatch struct {
	Name       *string `json:"name,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
	District   *string `json:"district,omitempty"`
	Upazila    *string `json:"upazila,omitempty"`
	BloodGroup *string `json:"bloodGroup,omitempty"`
}

func itoa(n int) string { return strconv.Itoa(n) }
