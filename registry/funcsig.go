package registry

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"caster/utils"
)

var (
	ErrNotAFunction      = errors.New("operator is not a function")
	ErrBadOperatorShape  = errors.New("function is not a recognizable conversion operator")
	ErrBadConverterShape = errors.New("method is not a recognizable converter")
	ErrDoublePointer     = errors.New("double pointers are not supported")
	ErrUnknownMethod     = errors.New("method not found on type")
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

func isError(t reflect.Type) bool {
	return t != nil && t.Implements(errType)
}

// ParseOperator inspects fn and builds its operator declaration.
//
// Accepted shapes:
//   - func(src S) (dst T)
//   - func(src S) (dst T, ok bool)
//   - func(src S) (dst T, err error)
//   - func(src S) (dst T, ok bool, err error)
func ParseOperator(fn any) (OperatorDecl, error) {
	if fn == nil {
		return OperatorDecl{}, ErrNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()

	if fnType.Kind() != reflect.Func {
		return OperatorDecl{}, fmt.Errorf("%w: %s", ErrNotAFunction, fnType.String())
	}

	fnName := runtime.FuncForPC(fnVal.Pointer()).Name()

	if fnType.NumIn() != 1 || !utils.IsInRange(1, fnType.NumOut(), 3) {
		return OperatorDecl{}, fmt.Errorf("%w: %s", ErrBadOperatorShape, fnName)
	}

	in, out := fnType.In(0), fnType.Out(0)
	if isDoublePointer(in) || isDoublePointer(out) {
		return OperatorDecl{}, fmt.Errorf("%w: %s", ErrDoublePointer, fnName)
	}

	alias, name := utils.Unpack2(strings.SplitN(fnName, ".", 2))
	decl := OperatorDecl{
		Name:  name,
		Pkg:   utils.Second(path.Split(alias)),
		Fn:    fnVal,
		In:    in,
		Out:   out,
		Owner: in,
	}

	hasOK, hasErr, ok := classifyTail(fnType)
	if !ok {
		return OperatorDecl{}, fmt.Errorf("%w: %s", ErrBadOperatorShape, fnName)
	}
	decl.HasOK, decl.HasErr = hasOK, hasErr

	return decl, nil
}

// ParseConverterMethod validates that the named method on owner is a
// recognizable converter and builds its declaration. The method must take no
// arguments beyond its receiver and follow the same result shapes as
// ParseOperator.
func ParseConverterMethod(owner reflect.Type, name string) (ConverterDecl, error) {
	m, found := owner.MethodByName(name)
	if !found {
		return ConverterDecl{}, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, TypeName(owner), name)
	}

	mType := m.Func.Type()

	// In(0) is the receiver.
	if mType.NumIn() != 1 || !utils.IsInRange(1, mType.NumOut(), 3) {
		return ConverterDecl{}, fmt.Errorf("%w: %s.%s", ErrBadConverterShape, TypeName(owner), name)
	}

	result := mType.Out(0)
	if isDoublePointer(result) {
		return ConverterDecl{}, fmt.Errorf("%w: %s.%s", ErrDoublePointer, TypeName(owner), name)
	}

	decl := ConverterDecl{
		Owner:  owner,
		Name:   name,
		Result: result,
	}

	hasOK, hasErr, ok := classifyTail(mType)
	if !ok {
		return ConverterDecl{}, fmt.Errorf("%w: %s.%s", ErrBadConverterShape, TypeName(owner), name)
	}
	decl.HasOK, decl.HasErr = hasOK, hasErr

	return decl, nil
}

func isDoublePointer(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Pointer
}

func classifyTail(fnType reflect.Type) (hasOK, hasErr, ok bool) {
	switch fnType.NumOut() {
	default:
		return false, false, false
	case 1:
		return false, false, true
	case 2:
		second := fnType.Out(1)
		switch {
		default:
			return false, false, false
		case second.Kind() == reflect.Bool:
			return true, false, true
		case isError(second):
			return false, true, true
		}
	case 3:
		if fnType.Out(1).Kind() != reflect.Bool || !isError(fnType.Out(2)) {
			return false, false, false
		}

		return true, true, true
	}
}
