package pages

import "time"

var now = time.Now

func currentYear() int {
	return now().Year()
}
