package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeNotFound        ErrorCode = "COMMON_005"
	ErrCodeTimeout         ErrorCode = "COMMON_009"
	ErrCodeValidation      ErrorCode = "COMMON_010"
	ErrCodeSerialization   ErrorCode = "COMMON_011"
	ErrCodeExternalService ErrorCode = "COMMON_014"
	ErrCodeCancelled       ErrorCode = "COMMON_017"
)

// Aliases used at call sites that read better with the short form.
const (
	CodeUnknown      = ErrorCode("")
	CodeOK           = ErrorCode("OK")
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeStorageError = ErrCodeExternalService

	ErrCodeInvalidParam = ErrCodeBadRequest
	ErrCodeStorageError = ErrCodeExternalService
)

// Molecule Module Error Codes
const (
	ErrCodeMoleculeInvalidSMILES    ErrorCode = "MOL_001"
	ErrCodeMoleculeParsingFailed    ErrorCode = "MOL_006"
	ErrCodeSubstructureSearchFailed ErrorCode = "MOL_012"
	ErrCodeKekulizationFailed       ErrorCode = "MOL_015"
	ErrCodePatternInvalid           ErrorCode = "MOL_016"
	ErrCodeValenceInvalid           ErrorCode = "MOL_017"
)

// Table Module Error Codes
const (
	ErrCodeTableNotFound      ErrorCode = "TAB_001"
	ErrCodeTableMalformed     ErrorCode = "TAB_002"
	ErrCodeTableColumnMissing ErrorCode = "TAB_003"
	ErrCodeTableEncoding      ErrorCode = "TAB_004"
	ErrCodeTableWriteFailed   ErrorCode = "TAB_005"
)

// Configuration Error Codes
const (
	ErrCodeConfigInvalid  ErrorCode = "CFG_001"
	ErrCodeConfigNotFound ErrorCode = "CFG_002"
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal error",
	ErrCodeBadRequest:      "bad request",
	ErrCodeNotFound:        "resource not found",
	ErrCodeTimeout:         "operation timeout",
	ErrCodeValidation:      "validation failed",
	ErrCodeSerialization:   "serialization failed",
	ErrCodeExternalService: "external service error",
	ErrCodeCancelled:       "operation cancelled",

	ErrCodeMoleculeInvalidSMILES:    "invalid SMILES",
	ErrCodeMoleculeParsingFailed:    "molecule parsing failed",
	ErrCodeSubstructureSearchFailed: "substructure search failed",
	ErrCodeKekulizationFailed:       "cannot kekulize aromatic system",
	ErrCodePatternInvalid:           "invalid SMARTS pattern",
	ErrCodeValenceInvalid:           "explicit valence exceeds allowed maximum",

	ErrCodeTableNotFound:      "input table not found",
	ErrCodeTableMalformed:     "input table is malformed",
	ErrCodeTableColumnMissing: "required column missing",
	ErrCodeTableEncoding:      "unsupported text encoding",
	ErrCodeTableWriteFailed:   "failed to write table",

	ErrCodeConfigInvalid:  "invalid configuration",
	ErrCodeConfigNotFound: "configuration file not found",
}

// DefaultMessage returns the registered default message for code, or the code
// itself when no message is registered.
func DefaultMessage(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return code.String()
}

// IsFatalLoad reports whether code belongs to the input-load failure class.
// These abort a run before any record is processed.
func IsFatalLoad(code ErrorCode) bool {
	switch code {
	case ErrCodeTableNotFound, ErrCodeTableMalformed, ErrCodeTableColumnMissing, ErrCodeTableEncoding:
		return true
	}
	return false
}

//Personal.AI order the ending
