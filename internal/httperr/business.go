package httperr

import "errors"

// BusinessError is a rule violation identified by a stable snake_case code
// ("cancelamento_fora_do_prazo", "dados_incompletos"). Use cases return it
// when the request is well-formed but the operation is not allowed; handlers
// translate the code into an HTTP response.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err carries exactly the given code.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
