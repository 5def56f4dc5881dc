package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Assessment-specific ───────────────────────────────────────────
	ErrAssessmentNotStarted  ErrCode = "ASSESSMENT_NOT_STARTED"
	ErrAssessmentSubmitted   ErrCode = "ASSESSMENT_ALREADY_SUBMITTED"
	ErrWrongAssessmentStage  ErrCode = "WRONG_ASSESSMENT_STAGE"
	ErrNoQuestionsConfigured ErrCode = "NO_QUESTIONS_CONFIGURED"

	// ─── Uploads ───────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid username or password."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Assessment-specific ───────────────────────────────────────────
	case ErrAssessmentNotStarted:
		return "No active assessment found for this applicant."
	case ErrAssessmentSubmitted:
		return "This assessment stage has already been submitted."
	case ErrWrongAssessmentStage:
		return "The assessment is not in the expected stage for this action."
	case ErrNoQuestionsConfigured:
		return "No questions are configured for this assessment."

	// ─── Uploads ───────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
