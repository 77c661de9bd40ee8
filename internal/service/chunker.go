package service

import (
	"strings"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
)

// Default chunk boundaries, in lines.
const (
	chunkMinLines = 300
	chunkMaxLines = 500
)

// ChunkFile splits file content into line-numbered chunks using the default
// boundaries. Given the same content it always produces the same chunks.
func ChunkFile(filePath, content string) []domain.Chunk {
	return chunkFileContent(filePath, content, chunkMinLines, chunkMaxLines)
}

// chunkFileContent walks the file forward taking up to maxLines lines per
// chunk. When the tail remaining after a full chunk would be smaller than
// minLines, the current chunk is cut at minLines instead so the trailing
// chunk absorbs more of the file. The final chunk may still be shorter than
// minLines if the file itself is short. Chunks whose joined, trimmed content
// is empty are dropped and their line range skipped. Line numbers are
// 1-indexed and EndLine is inclusive.
func chunkFileContent(filePath, content string, minLines, maxLines int) []domain.Chunk {
	lines := splitLines(content)

	var chunks []domain.Chunk
	start := 0
	for start < len(lines) {
		end := start + maxLines
		if end > len(lines) {
			end = len(lines)
		}
		if len(lines)-end < minLines && end != len(lines) {
			end = start + minLines
			if end > len(lines) {
				end = len(lines)
			}
		}

		chunkLines := lines[start:end]
		if strings.TrimSpace(strings.Join(chunkLines, "")) == "" {
			start = end
			continue
		}

		chunks = append(chunks, domain.Chunk{
			FilePath:  filePath,
			StartLine: start + 1,
			EndLine:   end,
			Content:   strings.Join(chunkLines, "\n"),
		})
		start = end
	}
	return chunks
}

func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}
