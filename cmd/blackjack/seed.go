package main

import "time"

func newSeed() int64 {
	return time.Now().UnixNano()
}
