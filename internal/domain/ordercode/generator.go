// Package ordercode genera los códigos públicos cortos de las órdenes.
package ordercode

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// Alphabet 36 símbolos: dígitos y mayúsculas.
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// Length longitud fija del código.
	Length = 8
)

// mayor múltiplo de 36 que cabe en un byte; bytes >= maxByte se descartan para no sesgar.
const maxByte = 256 - (256 % len(Alphabet))

// Generator produce códigos aleatorios uniformes. No verifica unicidad: eso lo garantiza el constraint
// UNIQUE de almacenamiento y el reintento del pipeline.
type Generator struct {
	rand io.Reader
}

// New construye el generador sobre crypto/rand.
func New() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewWithReader permite inyectar la fuente de aleatoriedad (tests).
func NewWithReader(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate devuelve un código de Length caracteres de Alphabet.
func (g *Generator) Generate() (string, error) {
	out := make([]byte, 0, Length)
	buf := make([]byte, Length*2)
	for len(out) < Length {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", fmt.Errorf("leer aleatoriedad: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out), nil
}

// Valid indica si s tiene el formato de un código de orden.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
