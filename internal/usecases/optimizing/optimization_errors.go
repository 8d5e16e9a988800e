package optimizing

import "errors"

var ErrUnsupportedLevel = errors.New("nível não suportado para sugestões")
