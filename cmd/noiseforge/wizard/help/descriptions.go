package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all wizard fields
var Texts = map[string]HelpText{
	"mode": {
		Title:       "MODE",
		Description: "How each 32-bit random value becomes a pixel.",
		Details: `grayscale - the low byte is copied to R, G and B
colorful  - bytes 0, 1 and 2 become R, G and B`,
	},
	"width": {
		Title:       "WIDTH",
		Description: "Image width in pixels.",
		Details:     "Must be greater than 0. Width × height must fit in 32 bits.",
	},
	"height": {
		Title:       "HEIGHT",
		Description: "Image height in pixels.",
		Details:     "Each row gets its own generator, so rows are filled in parallel.",
	},
	"seed": {
		Title:       "SEED",
		Description: "Seed for reproducibility.",
		Details: `Any value from 0 to 4294967295.
The same seed, size and mode always produce the same image,
whatever the number of workers.`,
	},
	"output": {
		Title:       "OUTPUT FILE",
		Description: "Path of the image to write.",
		Details: `The extension is replaced by the format's own (.png, .bmp, .tiff, .dcm).
An existing file is overwritten.`,
	},
	"format": {
		Title:       "FORMAT",
		Description: "Lossless container for the image.",
		Details: `auto - inferred from the output extension, PNG otherwise
dcm  - DICOM Secondary Capture, viewable in any PACS`,
	},
	"workers": {
		Title:       "WORKERS",
		Description: "Number of rows generated concurrently.",
		Details:     "0 uses one worker per CPU core. The output never depends on this value.",
	},
	"stamp": {
		Title:       "SEED STAMP",
		Description: "Write \"seed=N WxH mode\" in the bottom-left corner.",
		Details:     "Useful to recognise a generated image later. Only the encoded file is stamped.",
	},
}
