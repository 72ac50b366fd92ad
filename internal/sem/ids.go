package sem

// ClassID identifies a class declaration in the module arena.
type ClassID uint32

const (
	// NoClassID marks the absence of a class reference.
	NoClassID ClassID = 0
)

// IsValid reports whether the ID refers to an allocated class.
func (id ClassID) IsValid() bool { return id != NoClassID }

// CallableID identifies a callable declaration (function or property).
// It doubles as the callable symbol of the member scopes: a symbol is a
// stable reference to a declaration that supports unwrapping through
// substitution and intersection override chains.
type CallableID uint32

const (
	// NoCallableID marks the absence of a callable reference.
	NoCallableID CallableID = 0
)

// IsValid reports whether the ID refers to an allocated callable.
func (id CallableID) IsValid() bool { return id != NoCallableID }

// PackageID identifies an owning package.
type PackageID uint32

const (
	// NoPackageID marks the absence of a package.
	NoPackageID PackageID = 0
)

// IsValid reports whether the ID refers to a known package.
func (id PackageID) IsValid() bool { return id != NoPackageID }
