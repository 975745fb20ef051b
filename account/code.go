// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"math/rand"
	"time"

	"github.com/swfe/bankd/fault"
)

// code format
const (
	CodeLength = 20

	maximumCodeAttempts = 1000
)

// Generator - produce account codes
type Generator struct {
	r *rand.Rand
}

// NewGenerator - create a generator from a random source
//
// a nil source is seeded from the clock
func NewGenerator(source rand.Source) *Generator {
	if nil == source {
		source = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{
		r: rand.New(source),
	}
}

// Generate - a code for which exists returns false
//
// every candidate is checked against the whole store
func (g *Generator) Generate(exists func(code string) bool) (string, error) {
	for i := 0; i < maximumCodeAttempts; i += 1 {
		code := g.candidate()
		if !exists(code) {
			return code, nil
		}
	}
	return "", fault.ErrCodeExhausted
}

// each character is a digit or a..f with equal chance
func (g *Generator) candidate() string {
	buffer := make([]byte, CodeLength)
	for i := range buffer {
		if g.r.Intn(100) < 50 {
			buffer[i] = byte('0' + g.r.Intn(10))
		} else {
			buffer[i] = byte('a' + g.r.Intn(6))
		}
	}
	return string(buffer)
}

// ValidCode - check the code format
func ValidCode(code string) bool {
	if CodeLength != len(code) {
		return false
	}
	for _, c := range code {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
