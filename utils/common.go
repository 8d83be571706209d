package utils

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// TimeTrack logs the time elapsed since start under the given name. Callers
// defer it at the top of a function: defer utils.TimeTrack(time.Now(), "...").
func TimeTrack(start time.Time, name string) {
	fmt.Printf("%s took %s\n", name, time.Since(start))
}

// VerbosePrint prints only when -verbose is set.
func VerbosePrint(format string, a ...interface{}) (n int, err error) {
	if Opts().Verbose() {
		return fmt.Printf(format, a...)
	}
	return 0, nil
}

// Atoi fatals instead of returning an error, for flag-adjacent parsing where
// a malformed value is a usage error, not a recoverable one.
func Atoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalln(err)
	}
	return i
}

func Prompt() {
	bufio.NewReader(os.Stdin).ReadString('\n')
}
