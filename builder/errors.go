package builder

import "errors"

// ErrUnknownOp is returned when ctx.Call names an operator the library has
// no registration for.
var ErrUnknownOp = errors.New("builder: unknown operator")

// ErrNameCollision is returned when LoadExternal/SaveExternal tries to
// claim a tensor name already bound in the current scope.
var ErrNameCollision = errors.New("builder: external tensor name already claimed in this scope")
