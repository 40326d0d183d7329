package extractor

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// extractDOCX 从OOXML格式的.docx文件提取纯文本。
// docx本质是zip包，正文位于 word/document.xml；
// 这里流式遍历XML token，段落结束处插入换行。
func extractDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("打开docx压缩包失败: %w", err)
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("docx中缺少 word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("读取 word/document.xml 失败: %w", err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("解析 word/document.xml 失败: %w", err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				sb.WriteByte('\t')
			}
			if t.Name.Local == "br" {
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			// 段落结束换行
			if t.Name.Local == "p" {
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String(), nil
}

// extractLegacyDoc 对老式二进制.doc做尽力而为的文本恢复：
// 没有可用的纯Go解析路径，扫描连续的可打印字符序列。
// 恢复不出内容时按正常的提取失败处理。
func extractLegacyDoc(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("读取doc文件失败: %w", err)
	}

	const minRunLength = 4
	var sb strings.Builder
	var run []byte
	flush := func() {
		if len(run) >= minRunLength {
			sb.Write(run)
			sb.WriteByte('\n')
		}
		run = run[:0]
	}

	for _, b := range data {
		if b >= 0x20 && b < 0x7f {
			run = append(run, b)
		} else {
			flush()
		}
	}
	flush()

	text := sb.String()
	if len(strings.TrimSpace(text)) == 0 {
		return "", fmt.Errorf("doc文件中未能恢复出可读文本")
	}
	return text, nil
}
