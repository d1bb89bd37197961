package video

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	"gocv.io/x/gocv"
)

//ErrTrackerExited is returned when the tracker process stops answering
var ErrTrackerExited = errors.New("tracker process exited")

//ProcessTracker talks to the YOLO tracking script running as a child process.
//For each frame it writes a 4 bytes big-endian length followed by a JPEG image to the script's standard input,
//and reads back one line holding a JSON list of {"ID", "Class", "Box"} objects.
//The script keeps its tracker alive between frames, so IDs stay stable for the whole video.
type ProcessTracker struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	scanner *bufio.Scanner
}

//StartTracker launches command with args and waits for frames
func StartTracker(command string, args ...string) (*ProcessTracker, error) {
	cmd := exec.Command(command, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("StartTracker: Error getting standard input, got '%v'", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("StartTracker: Error getting standard output, got '%v'", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("StartTracker: Error executing '%s', got '%v'", command, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	return &ProcessTracker{cmd: cmd, stdin: stdin, scanner: scanner}, nil
}

//TrackFrame sends one frame and returns every detection the model reported on it
func (t *ProcessTracker) TrackFrame(frame gocv.Mat) ([]tracking.Detection, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return nil, fmt.Errorf("TrackFrame: Error encoding frame, got '%v'", err)
	}
	defer buf.Close()

	if err := writeFrame(t.stdin, buf.GetBytes()); err != nil {
		return nil, fmt.Errorf("TrackFrame: Error writing frame, got '%v'", err)
	}

	return readDetections(t.scanner)
}

//Close ends the script's input and waits for it to exit.
//A failed exit wins over a failure to close the input.
func (t *ProcessTracker) Close() error {
	stdinErr := t.stdin.Close()
	if err := t.cmd.Wait(); err != nil {
		if stdinErr != nil {
			log.Printf("ProcessTracker.Close: Error closing standard input, got '%v'", stdinErr)
		}
		return fmt.Errorf("ProcessTracker.Close: Error waiting python's process, got '%v'", err)
	}

	if stdinErr != nil {
		return fmt.Errorf("ProcessTracker.Close: Error closing standard input, got '%v'", stdinErr)
	}

	return nil
}

func writeFrame(w io.Writer, img []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(img)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(img)
	return err
}

//readDetections reads lines until one carries the detections of the current frame
func readDetections(scanner *bufio.Scanner) ([]tracking.Detection, error) {
	for scanner.Scan() {
		detections, ok, err := parseTrackerLine(scanner.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			return detections, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("readDetections: Error, got '%v'", err)
	}

	return nil, ErrTrackerExited
}

//parseTrackerLine returns ok=false for lines that are only logs of the script
func parseTrackerLine(line string) ([]tracking.Detection, bool, error) {
	line = strings.TrimSpace(line)

	if line == "" || strings.Contains(line, "FPS: ") { //this is a log print, skip it
		return nil, false, nil
	}

	if !strings.HasPrefix(line, "[") {
		log.Printf("parseTrackerLine: skipping unexpected output '%s'", line)
		return nil, false, nil
	}

	detections := make([]tracking.Detection, 0)
	if err := json.Unmarshal([]byte(line), &detections); err != nil {
		return nil, false, fmt.Errorf("parseTrackerLine: Error, got '%v'", err)
	}

	return detections, true, nil
}
