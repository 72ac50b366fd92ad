package ir

// ClassID identifies an IR class in the module arena.
type ClassID uint32

const (
	// NoClassID marks the absence of an IR class reference.
	NoClassID ClassID = 0
)

// IsValid reports whether the ID refers to an allocated IR class.
func (id ClassID) IsValid() bool { return id != NoClassID }

// FuncID identifies an IR function declaration.
type FuncID uint32

const (
	// NoFuncID marks the absence of an IR function reference.
	NoFuncID FuncID = 0
)

// IsValid reports whether the ID refers to an allocated IR function.
func (id FuncID) IsValid() bool { return id != NoFuncID }

// PropID identifies an IR property declaration.
type PropID uint32

const (
	// NoPropID marks the absence of an IR property reference.
	NoPropID PropID = 0
)

// IsValid reports whether the ID refers to an allocated IR property.
func (id PropID) IsValid() bool { return id != NoPropID }
