package main

import (
	"github.com/gosuri/uiprogress"
)

// newProgress starts a progress bar of total steps on the error stream.
// The current step name is appended to the bar.
func newProgress(ui UI, total int, name func(current int) string) (*uiprogress.Progress, *uiprogress.Bar) {
	p := uiprogress.New()
	p.SetOut(ui.Err)
	p.Start()

	bar := p.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		if b.Current() == 0 {
			return ""
		}
		return name(b.Current() - 1)
	})

	return p, bar
}
