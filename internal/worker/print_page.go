package worker

import "strings"

// printPageShell 把保存的文档 HTML 包进 A4 打印壳。
// 文档内容使用的 Tailwind 工具类由 CDN 脚本在渲染时解析。
const printPageShell = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
        @page {
            size: A4;
            margin: 0;
        }
        body {
            margin: 0;
            padding: 0;
            -webkit-print-color-adjust: exact;
            print-color-adjust: exact;
        }
        .a4-page {
            width: 794px; /* A4 @ 96 DPI */
            min-height: 1122px;
            background: white;
            box-sizing: border-box;
            padding: 40px;
        }
    </style>
</head>
<body>
    <div class="a4-page">
{{CONTENT}}
    </div>
</body>
</html>`

func wrapForPrint(content string) string {
	return strings.Replace(printPageShell, "{{CONTENT}}", content, 1)
}
