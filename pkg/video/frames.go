package video

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"

	"gocv.io/x/gocv"
)

//ReadFrames decodes every frame of the video at videoPath. The caller must CloseFrames the result.
func ReadFrames(videoPath string) ([]gocv.Mat, float64, error) {
	cap, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return nil, 0, fmt.Errorf("ReadFrames: Error, got '%v'", err)
	}
	defer cap.Close()

	fps := cap.Get(gocv.VideoCaptureFPS)
	frames := make([]gocv.Mat, 0, int(cap.Get(gocv.VideoCaptureFrameCount)))

	frameMat := gocv.NewMat()
	defer frameMat.Close()

	for cap.Read(&frameMat) {
		if frameMat.Empty() {
			continue
		}
		frames = append(frames, frameMat.Clone())
	}

	if len(frames) == 0 {
		return nil, 0, fmt.Errorf("ReadFrames: no frames could be read from '%s'", videoPath)
	}

	return frames, fps, nil
}

//WriteFrames encodes frames as XVID into a temporary '.avi' file under tmpDir, then converts it to outputPath with ffmpeg
func WriteFrames(outputPath, tmpDir string, frames []gocv.Mat, fps float64) error {
	if len(frames) == 0 {
		return errors.New("WriteFrames: no frames to write")
	}

	base := path.Base(outputPath)
	tmpVideoPath := path.Join(tmpDir, strings.TrimSuffix(base, path.Ext(base))+".avi")

	videoWriter, err := gocv.VideoWriterFile(tmpVideoPath, "XVID", fps, frames[0].Cols(), frames[0].Rows(), true)
	if err != nil {
		return fmt.Errorf("WriteFrames: Error, got '%v'", err)
	}
	defer os.Remove(tmpVideoPath) //remove '.avi' temp file at the end of this function

	for i, frame := range frames {
		if err := videoWriter.Write(frame); err != nil {
			videoWriter.Close()
			return fmt.Errorf("WriteFrames: Error writing frame %d, got '%v'", i, err)
		}
	}
	if err := videoWriter.Close(); err != nil {
		return fmt.Errorf("WriteFrames: Error, got '%v'", err)
	}

	//example: ffmpeg -y -i rally.avi rally.mp4
	cmd := exec.Command("ffmpeg", "-y", "-loglevel", "error", "-i", tmpVideoPath, outputPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("WriteFrames: Error from ffmpeg, got '%v': %s", err, out)
	}

	return nil
}

//CloseFrames releases the memory of every frame
func CloseFrames(frames []gocv.Mat) {
	for i := range frames {
		frames[i].Close()
	}
}
