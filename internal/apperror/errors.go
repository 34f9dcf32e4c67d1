package apperror

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist or is not owned
	// by the requesting user. Both cases look identical to the caller.
	ErrNotFound = errors.New("resource not found")
	// ErrEmailTaken is returned when signup uses an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login with a wrong email or password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// expired or carries a bad signature.
	ErrInvalidToken = errors.New("invalid authentication credentials")
	// ErrInvalidUpload is returned for uploads that are not PDF files or
	// exceed the size limit.
	ErrInvalidUpload = errors.New("invalid upload")
	// ErrExtractionFailed is returned when no extractor produced usable text
	// from an uploaded file.
	ErrExtractionFailed = errors.New("failed to extract text from PDF")
	// ErrUnreadableContent is returned when extracted text is too short or
	// too noisy to seed quiz generation.
	ErrUnreadableContent = errors.New("extracted text is not suitable for quiz generation")
	// ErrGenerationFailed indicates the remote AI call produced no usable
	// output. Generation services absorb it into a deterministic fallback;
	// it never reaches a handler.
	ErrGenerationFailed = errors.New("ai generation failed")
)
