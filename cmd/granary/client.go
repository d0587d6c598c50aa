package main

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file through the scheduler",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var downloadCmd = &cobra.Command{
	Use:   "download <filename>",
	Short: "Download a file through the scheduler",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

func init() {
	uploadCmd.Flags().String("scheduler", "http://localhost:8080", "Scheduler HTTP endpoint")
	downloadCmd.Flags().String("scheduler", "http://localhost:8080", "Scheduler HTTP endpoint")
	downloadCmd.Flags().StringP("output", "o", "", "Output path (defaults to the filename)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	endpoint, _ := cmd.Flags().GetString("scheduler")
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	// Stream the multipart body instead of buffering the file.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		fw, err := mw.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(fw, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	resp, err := http.Post(endpoint+"/files/uploadFile", mw.FormDataContentType(), pr)
	if err != nil {
		return fmt.Errorf("upload failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload failed: %s: %s", resp.Status, string(body))
	}

	fmt.Printf("✓ %s\n", string(body))
	return nil
}

func runDownload(cmd *cobra.Command, args []string) error {
	endpoint, _ := cmd.Flags().GetString("scheduler")
	name := args[0]

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Base(name)
	}

	resp, err := http.Get(endpoint + "/files/getFile?name=" + url.QueryEscape(name))
	if err != nil {
		return fmt.Errorf("download failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("file not found: %s", name)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("download failed: %s: %s", resp.Status, string(body))
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", output, err)
	}
	defer out.Close()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %v", output, err)
	}

	fmt.Printf("✓ Downloaded %s (%d bytes) to %s\n", name, n, output)
	return nil
}
