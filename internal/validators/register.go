package validators

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register adiciona as tags "cpf" e "horario" ao validador usado pelo gin
// e faz os erros usarem o nome json do campo.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return IsCPFValid(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("horario", func(fl validator.FieldLevel) bool {
		return IsTimeSlotValid(fl.Field().String())
	})
}

// Messages traduz erros de validação em mensagens por campo (json).
func Messages(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório."
	case "email":
		return "Email inválido."
	case "min":
		return "Valor abaixo do mínimo (" + fe.Param() + ")."
	case "max":
		return "Valor acima do máximo (" + fe.Param() + ")."
	case "oneof":
		return "Deve ser um de: " + fe.Param() + "."
	case "cpf":
		return "CPF inválido."
	case "horario":
		return "Horário deve estar no formato HH:MM."
	default:
		return "Valor inválido."
	}
}
