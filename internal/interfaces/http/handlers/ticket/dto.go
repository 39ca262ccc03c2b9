package ticket

// CreateTicketRequest is the new-ticket form.
type CreateTicketRequest struct {
	ProjectName    string `form:"project_name" binding:"required,max=120"`
	ApplicantName  string `form:"applicant_name" binding:"required,max=120"`
	ApplicantPhone string `form:"applicant_phone" binding:"required,max=40,phone"`
	Description    string `form:"description" binding:"max=5000"`
}

// ChangeStatusRequest is the status part of the ticket action form.
// The pickup proof arrives as the pickup_proof file field.
type ChangeStatusRequest struct {
	Status          string `form:"status" binding:"required"`
	PickupRecipient string `form:"pickup_recipient" binding:"max=120"`
}

// AddCommentRequest is the comment part of the ticket action form.
// The optional photo arrives as the photo file field.
type AddCommentRequest struct {
	Text string `form:"text" binding:"max=5000"`
}

const (
	actionComment = "comment"
	actionStatus  = "status"

	commentPhotoField = "photo"
	pickupProofField  = "pickup_proof"

	// multipartMemory is how much of a form is buffered before parts spill to temp files.
	multipartMemory = 8 << 20
)
