package notifier

import (
	"fmt"
	"io"
	"os"
)

type StdoutNotifier struct {
	name string
	out  io.Writer
}

func NewStdoutNotifier(name string) (*StdoutNotifier, error) {
	return &StdoutNotifier{
		name: name,
		out:  os.Stdout,
	}, nil
}

func (sout *StdoutNotifier) Name() string {
	return sout.name
}

func (sout *StdoutNotifier) Send(data NotificationData) error {
	_, err := fmt.Fprintf(sout.out, "[%s] %s %s: %s\n",
		data.Time.Format("2006-01-02 15:04:05"), data.State, data.Title, data.Message)
	return err
}
