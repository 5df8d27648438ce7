package mesh

import (
	"bufio"
	"io"
	"strconv"
)

// coordPrecision matches the host's OBJ writer.
const coordPrecision = 6

// WriteOBJ writes sm as a single OBJ object. Indices are 1-based.
func WriteOBJ(w io.Writer, sm *Submesh) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	bw.WriteString("o ")
	bw.WriteString(sm.Name)
	bw.WriteByte('\n')

	for _, v := range sm.Vertices {
		buf = append(buf[:0], 'v')
		for _, c := range v {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, c, 'f', coordPrecision, 64)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	for _, uv := range sm.UVs {
		buf = append(buf[:0], 'v', 't')
		for _, c := range uv {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, c, 'f', coordPrecision, 64)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	for _, f := range sm.Faces {
		buf = append(buf[:0], 'f')
		for i, vi := range f.Vertices {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(vi+1), 10)
			if len(f.UV) > 0 {
				buf = append(buf, '/')
				buf = strconv.AppendInt(buf, int64(f.UV[i]+1), 10)
			}
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	return bw.Flush()
}
