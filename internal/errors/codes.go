package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Menu (MENU_) ====================
	MenuItemNotFound    = "MENU_ITEM_NOT_FOUND"
	MenuItemUnavailable = "MENU_ITEM_UNAVAILABLE"
	MenuInvalidVariant  = "MENU_INVALID_VARIANT"
	CategoryNotFound    = "MENU_CATEGORY_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartItemNotFound    = "CART_ITEM_NOT_FOUND"
	CartEmpty           = "CART_EMPTY"
	CartInvalidQuantity = "CART_INVALID_QUANTITY"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound        = "ORDER_NOT_FOUND"
	OrderInvalidStatus   = "ORDER_INVALID_STATUS"
	OrderNotCancellable  = "ORDER_NOT_CANCELLABLE"
	OrderInvalidDetails  = "ORDER_INVALID_DETAILS"
	OrderStaffNotFound   = "ORDER_STAFF_NOT_FOUND"

	// ==================== Addresses (ADDRESS_) ====================
	AddressNotFound = "ADDRESS_NOT_FOUND"

	// ==================== Expenses (EXPENSE_) ====================
	ExpenseNotFound        = "EXPENSE_NOT_FOUND"
	ExpenseInvalidCategory = "EXPENSE_INVALID_CATEGORY"

	// ==================== Reports (REPORT_) ====================
	ReportInvalidRange = "REPORT_INVALID_RANGE"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
