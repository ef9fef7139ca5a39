package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
const idLength = 10

// GenerateID gera o ID curto usado pelos snapshots de relatório
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
