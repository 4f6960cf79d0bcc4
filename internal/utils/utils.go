package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type InputUtils struct {
	In  io.Reader
	Out io.Writer
}

// NewInputUtils prompts on stdout and reads answers from stdin.
func NewInputUtils() *InputUtils {
	return &InputUtils{In: os.Stdin, Out: os.Stdout}
}

// AskConfirmation asks user for yes/no confirmation
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(i.Out, "%s (y/N): ", message)

	response, err := bufio.NewReader(i.In).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
