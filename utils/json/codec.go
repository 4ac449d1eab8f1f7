// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
)

// NewCodec returns a json codec that converts the first character of the
// function part of the method name to uppercase, so that "gate.checkRole" on
// the wire dispatches to the service's exported CheckRole method.
func NewCodec() rpc.Codec { return lowercase{json2.NewCodec()} }

type lowercase struct{ *json2.Codec }

func (lc lowercase) NewRequest(r *http.Request) rpc.CodecRequest {
	return &request{CodecRequest: lc.Codec.NewRequest(r).(*json2.CodecRequest)}
}

type request struct{ *json2.CodecRequest }

func (r *request) Method() (string, error) {
	method, err := r.CodecRequest.Method()
	methodSections := strings.SplitN(method, ".", 2)
	if len(methodSections) != 2 || len(methodSections[1]) == 0 || err != nil {
		return method, err
	}
	class, function := methodSections[0], methodSections[1]
	firstFunctionChar := []rune(function)[0]
	uppercaseFirstFunctionChar := unicode.ToUpper(firstFunctionChar)
	newFunction := string(uppercaseFirstFunctionChar) + function[1:]
	fixedMethod := class + "." + newFunction
	return fixedMethod, err
}
