package asset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/x448/float16"
)

// ErrBadHDR reports a malformed Radiance file.
var ErrBadHDR = errors.New("malformed radiance hdr")

// HDRImage is a decoded high dynamic range image with linear RGBA float32 pixels,
// rows ordered top to bottom.
type HDRImage struct {
	Width  int
	Height int
	Pix    []float32
}

// At returns the linear RGB value of a pixel.
func (img *HDRImage) At(x, y int) [3]float32 {
	i := (y*img.Width + x) * 4
	return [3]float32{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}
}

// RGBA16F converts the pixels to half floats for an Rgba16Float texture.
//
// Returns:
//   - []byte: Width*Height*8 bytes, little-endian
func (img *HDRImage) RGBA16F() []byte {
	out := make([]byte, len(img.Pix)*2)
	for i, v := range img.Pix {
		bits := float16.Fromfloat32(v).Bits()
		out[i*2] = byte(bits)
		out[i*2+1] = byte(bits >> 8)
	}
	return out
}

// DecodeHDR decodes a Radiance RGBE (.hdr) image. Flat, old-style run-length and
// new-style per-channel run-length scanlines are accepted, in either vertical order.
//
// Parameters:
//   - r: the encoded file
//
// Returns:
//   - *HDRImage: the decoded image
//   - error: ErrBadHDR wrapped with detail on malformed input
func DecodeHDR(r io.Reader) (*HDRImage, error) {
	br := bufio.NewReader(r)

	magic, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHDR, err)
	}
	if !strings.HasPrefix(magic, "#?") {
		return nil, fmt.Errorf("%w: missing #? signature", ErrBadHDR)
	}
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrBadHDR, err)
		}
		if line == "" {
			break
		}
		if f, ok := strings.CutPrefix(line, "FORMAT="); ok && f != "32-bit_rle_rgbe" {
			return nil, fmt.Errorf("%w: unsupported format %s", ErrBadHDR, f)
		}
	}

	res, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("%w: resolution: %v", ErrBadHDR, err)
	}
	width, height, flipY, err := parseResolution(res)
	if err != nil {
		return nil, err
	}

	img := &HDRImage{Width: width, Height: height, Pix: make([]float32, width*height*4)}
	scan := make([]byte, width*4)
	for row := 0; row < height; row++ {
		if err := readScanline(br, scan, width); err != nil {
			return nil, fmt.Errorf("%w: scanline %d: %v", ErrBadHDR, row, err)
		}
		y := row
		if flipY {
			y = height - 1 - row
		}
		dst := img.Pix[y*width*4 : (y+1)*width*4]
		for x := 0; x < width; x++ {
			rgbeToFloat(dst[x*4:x*4+4], scan[x*4:x*4+4])
		}
	}
	return img, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseResolution accepts "-Y h +X w" (top-down) and "+Y h +X w" (bottom-up).
func parseResolution(line string) (w, h int, flipY bool, err error) {
	f := strings.Fields(line)
	if len(f) != 4 || f[2] != "+X" || (f[0] != "-Y" && f[0] != "+Y") {
		return 0, 0, false, fmt.Errorf("%w: unsupported resolution line %q", ErrBadHDR, line)
	}
	h, err1 := strconv.Atoi(f[1])
	w, err2 := strconv.Atoi(f[3])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false, fmt.Errorf("%w: bad dimensions %q", ErrBadHDR, line)
	}
	return w, h, f[0] == "+Y", nil
}

func readScanline(br *bufio.Reader, scan []byte, width int) error {
	if width < 8 || width > 0x7fff {
		return readFlat(br, scan, 0)
	}
	var head [4]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return err
	}
	if head[0] != 2 || head[1] != 2 || head[2]&0x80 != 0 {
		copy(scan, head[:])
		return readFlat(br, scan, 1)
	}
	if int(head[2])<<8|int(head[3]) != width {
		return errors.New("scanline width mismatch")
	}

	// new-style: each channel run-length encoded separately
	for ch := 0; ch < 4; ch++ {
		for x := 0; x < width; {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				n := int(count - 128)
				if x+n > width {
					return errors.New("run overflows scanline")
				}
				v, err := br.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < n; i++ {
					scan[(x+i)*4+ch] = v
				}
				x += n
				continue
			}
			n := int(count)
			if n == 0 || x+n > width {
				return errors.New("bad literal run")
			}
			for i := 0; i < n; i++ {
				v, err := br.ReadByte()
				if err != nil {
					return err
				}
				scan[(x+i)*4+ch] = v
			}
			x += n
		}
	}
	return nil
}

// readFlat reads uncompressed pixels, expanding old-style (1,1,1,n) repeat markers,
// starting at pixel index start.
func readFlat(br *bufio.Reader, scan []byte, start int) error {
	width := len(scan) / 4
	shift := 0
	x := start
	if start == 1 && isRepeat(scan[0:4]) {
		return errors.New("repeat marker at scanline start")
	}
	for x < width {
		var px [4]byte
		if _, err := io.ReadFull(br, px[:]); err != nil {
			return err
		}
		if isRepeat(px[:]) {
			if x == 0 {
				return errors.New("repeat marker at scanline start")
			}
			n := int(px[3]) << shift
			if x+n > width {
				return errors.New("repeat overflows scanline")
			}
			for i := 0; i < n; i++ {
				copy(scan[(x+i)*4:(x+i)*4+4], scan[(x-1)*4:x*4])
			}
			x += n
			shift += 8
			continue
		}
		copy(scan[x*4:x*4+4], px[:])
		x++
		shift = 0
	}
	return nil
}

func isRepeat(px []byte) bool {
	return px[0] == 1 && px[1] == 1 && px[2] == 1
}

func rgbeToFloat(dst []float32, rgbe []byte) {
	if rgbe[3] == 0 {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 1
		return
	}
	f := float32(math.Ldexp(1, int(rgbe[3])-(128+8)))
	dst[0] = float32(rgbe[0]) * f
	dst[1] = float32(rgbe[1]) * f
	dst[2] = float32(rgbe[2]) * f
	dst[3] = 1
}

// EncodeHDR writes img as a flat (uncompressed) Radiance file. It is used to
// produce fixtures and cached environment maps.
func EncodeHDR(w io.Writer, img *HDRImage) error {
	var buf bytes.Buffer
	buf.WriteString("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n")
	fmt.Fprintf(&buf, "-Y %d +X %d\n", img.Height, img.Width)
	for i := 0; i < img.Width*img.Height; i++ {
		buf.Write(floatToRGBE(img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2]))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func floatToRGBE(r, g, b float32) []byte {
	v := max(r, g, b)
	if v < 1e-32 {
		return []byte{0, 0, 0, 0}
	}
	frac, exp := math.Frexp(float64(v))
	scale := frac * 256 / float64(v)
	return []byte{byte(float64(r) * scale), byte(float64(g) * scale), byte(float64(b) * scale), byte(exp + 128)}
}
