package instrument

import (
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
)

// Config holds the static configuration of an Instrument.
type Config struct {
	// Target owns the method's identity metadata. It is required when
	// Method is a method name.
	Target any

	// Method is the operation being wrapped: an AwaitFunc, CallbackFunc or
	// HybridFunc (or an unnamed func of the same shape), or the name of an
	// exported method of Target with one of those shapes.
	Method any

	// DisplayName labels logs and spans. Defaults to the method identifier.
	DisplayName string

	// SuppressContext stops the instrument from passing an ExecContext to
	// the target; the target receives nil instead.
	SuppressContext bool

	// Logs and Metrics are optional; nil disables the signal.
	Logs    LogsSink
	Metrics MetricsSink
}

// resolveMethod binds cfg.Method to an adapter and returns the method's
// identifier.
func resolveMethod(target, method any) (adapter, string, error) {
	if method == nil {
		return nil, "", configError(ErrNilMethod, "")
	}

	if name, ok := method.(string); ok {
		if name == "" {
			return nil, "", configError(ErrNilMethod, "empty method name")
		}
		if target == nil {
			return nil, "", configError(ErrMethodNotFound, "%q: target is nil", name)
		}
		m := reflect.ValueOf(target).MethodByName(name)
		if !m.IsValid() {
			return nil, "", configError(ErrMethodNotFound, "%T.%s", target, name)
		}
		a, ok := adapt(m.Interface())
		if !ok {
			return nil, "", configError(ErrUnsupportedMethod, "%T.%s has type %s", target, name, m.Type())
		}
		return a, name, nil
	}

	v := reflect.ValueOf(method)
	if v.Kind() != reflect.Func {
		return nil, "", configError(ErrUnsupportedMethod, "%T is not a func", method)
	}
	if v.IsNil() {
		return nil, "", configError(ErrNilMethod, "")
	}
	a, ok := adapt(method)
	if !ok {
		return nil, "", configError(ErrUnsupportedMethod, "%T", method)
	}
	return a, funcName(v), nil
}

// funcName returns the short symbol name of fn, e.g. "Get" for the method
// value store.Get.
func funcName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return "anonymous"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

// targetIdentity derives identity metadata for target once, at New.
func targetIdentity(target any) Metadata {
	if target == nil {
		return nil
	}
	if d, ok := target.(Describer); ok {
		return CloneMetadata(d.TargetMetadata())
	}

	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	md := Metadata{}
	if pkg := t.PkgPath(); pkg != "" {
		md["module"] = pkg
		if v := moduleVersion(pkg); v != "" {
			md["version"] = v
		}
	}
	if t.Name() != "" {
		md["type"] = t.Name()
	}
	if len(md) == 0 {
		return nil
	}
	return md
}

// moduleVersion looks up the version of the module that provides pkg in
// the running binary's build info.
func moduleVersion(pkg string) string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	mods := make([]*debug.Module, 0, len(bi.Deps)+1)
	mods = append(mods, &bi.Main)
	mods = append(mods, bi.Deps...)

	var best, version string
	for _, m := range mods {
		if m == nil || m.Path == "" {
			continue
		}
		if pkg != m.Path && !strings.HasPrefix(pkg, m.Path+"/") {
			continue
		}
		if len(m.Path) > len(best) {
			best, version = m.Path, m.Version
			if m.Replace != nil && m.Replace.Version != "" {
				version = m.Replace.Version
			}
		}
	}
	return version
}
