package thumbnail

// Instructions is the manual fallback shown when ffmpeg is unavailable at deploy time
type Instructions struct {
	Message      string   `json:"message"`
	Instructions []string `json:"instructions"`
}

// FallbackInstructions returns the fixed guidance for committing thumbnails by hand
func FallbackInstructions() Instructions {
	return Instructions{
		Message: "For Vercel deployments, thumbnail generation should be done during build time",
		Instructions: []string{
			"1. Run the thumbnail generation script locally before deploying:",
			"   go run ./cmd/generate public/media",
			"2. Commit the generated thumbnails to your repository",
			"3. Deploy to Vercel with the thumbnails included",
			"",
			"Alternative approaches:",
			"- Use a third-party service like Cloudinary or Mux for video processing",
			"- Set up a separate server with ffmpeg for thumbnail generation",
		},
	}
}
