package logger

import "fmt"

func sprintf(msg string, a ...any) string {
	if len(a) == 0 {
		return msg
	}

	return fmt.Sprintf(msg, a...)
}
