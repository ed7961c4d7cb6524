package buildgen

// Options are the binary-compatibility options of the package.
//
// FPIC is a pointer because the option does not merely default on
// Windows; it is removed from the option set entirely, matching the
// behavior of deleting fPIC during option configuration.
type Options struct {
	Shared bool
	FPIC   *bool
}

// DefaultOptions returns the option set for the given settings:
// shared=false, fPIC=true, with fPIC absent on Windows.
func DefaultOptions(s Settings) Options {
	opts := Options{Shared: false}
	if s.OS != "Windows" {
		fpic := true
		opts.FPIC = &fpic
	}

	return opts
}

// WithShared returns a copy of the options with shared set.
func (o Options) WithShared(shared bool) Options {
	o.Shared = shared

	return o
}

// WithFPIC returns a copy of the options with fPIC set. It is a no-op
// when the option has been removed for the target platform.
func (o Options) WithFPIC(fpic bool) Options {
	if o.FPIC != nil {
		o.FPIC = &fpic
	}

	return o
}
