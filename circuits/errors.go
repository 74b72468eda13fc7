package circuits

import "errors"

// ErrNilConstructor indicates Build was given a nil Constructor, mirroring
// the teacher's defensive check in builder.BuildGraph.
var ErrNilConstructor = errors.New("circuits: nil constructor")
