package encode

import (
	"fmt"
	stdimage "image"
	"io"

	"github.com/mrsinham/noiseforge/internal/image"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const (
	explicitVRLittleEndian = "1.2.840.10008.1.2.1"
	secondaryCaptureSOP    = "1.2.840.10008.5.1.4.1.1.7"

	// maxDICOMSide is the largest value the US-typed Rows/Columns can hold.
	maxDICOMSide = 0xFFFF
)

// writeDICOM writes img as an 8-bit Secondary Capture instance. Grayscale
// rasters become single-sample MONOCHROME2; colorful ones interleaved RGB.
func writeDICOM(w io.Writer, img *stdimage.RGBA, meta Metadata) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width > maxDICOMSide || height > maxDICOMSide {
		return fmt.Errorf("dcm supports at most %d pixels per side, got %dx%d", maxDICOMSide, width, height)
	}

	samples := 3
	photometric := "RGB"
	if meta.Mode == image.Grayscale {
		samples = 1
		photometric = "MONOCHROME2"
	}

	pixelsPerFrame := width * height
	nativeFrame := frame.NewNativeFrame[uint8](8, height, width, pixelsPerFrame, samples)
	data := nativeFrame.RawData
	for i, j := 0, 0; i < len(img.Pix); i, j = i+4, j+samples {
		copy(data[j:j+samples], img.Pix[i:i+samples])
	}

	uids := newInstanceUIDs(meta.Seed, uint32(width), uint32(height), meta.Mode)

	elements := []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{explicitVRLittleEndian}),
		mustNewElement(tag.MediaStorageSOPClassUID, []string{secondaryCaptureSOP}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{uids.SOPInstance}),
		mustNewElement(tag.SOPClassUID, []string{secondaryCaptureSOP}),
		mustNewElement(tag.SOPInstanceUID, []string{uids.SOPInstance}),
		mustNewElement(tag.StudyInstanceUID, []string{uids.Study}),
		mustNewElement(tag.SeriesInstanceUID, []string{uids.Series}),
		mustNewElement(tag.PatientName, []string{"NOISEFORGE^SEED"}),
		mustNewElement(tag.PatientID, []string{fmt.Sprintf("SEED%010d", meta.Seed)}),
		mustNewElement(tag.Modality, []string{"OT"}),
		mustNewElement(tag.ConversionType, []string{"WSD"}),
		mustNewElement(tag.SeriesNumber, []string{"1"}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
		mustNewElement(tag.ImageComments, []string{image.StampText(meta.Seed, uint32(width), uint32(height), meta.Mode)}),
		mustNewElement(tag.Rows, []int{height}),
		mustNewElement(tag.Columns, []int{width}),
		mustNewElement(tag.SamplesPerPixel, []int{samples}),
		mustNewElement(tag.PhotometricInterpretation, []string{photometric}),
		mustNewElement(tag.BitsAllocated, []int{8}),
		mustNewElement(tag.BitsStored, []int{8}),
		mustNewElement(tag.HighBit, []int{7}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
	}
	if samples == 3 {
		elements = append(elements, mustNewElement(tag.PlanarConfiguration, []int{0}))
	}

	elements = append(elements, mustNewElement(tag.PixelData, dicom.PixelDataInfo{
		Frames: []*frame.Frame{
			{
				Encapsulated: false,
				NativeData:   nativeFrame,
			},
		},
	}))

	return dicom.Write(w, dicom.Dataset{Elements: elements})
}

func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}
