package imaging

import "errors"

var (
	ErrEmpty  = errors.New("image payload is empty")
	ErrDecode = errors.New("image payload could not be decoded")
)
