// Package main provides localization for the wmstamp CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input and Output": "入出力",
		"Watermark":        "透かし",
		"Logging":          "ログ",
		"Debug":            "デバッグ",

		// Root command
		"Stamp a text watermark onto every image in a directory tree": "ディレクトリ内のすべての画像にテキスト透かしを入れる",

		"wmstamp writes a copy of each image with a rotated, shadowed text watermark near its bottom-right corner, mirroring the input tree under the output directory.": "wmstampは各画像の右下付近に回転した影付きのテキスト透かしを入れ、入力ディレクトリと同じ構成で出力ディレクトリに保存します。",

		// Input and output flags
		"Input directory to scan for images":                      "画像を探す入力ディレクトリ",
		"Output directory (default: <input>/watermarked)":         "出力ディレクトリ（デフォルト: <input>/watermarked）",
		"Only process images directly inside the input directory": "入力ディレクトリ直下の画像のみ処理",
		"YAML configuration file":                                 "YAML設定ファイル",

		// Watermark flags
		"Watermark text":                                    "透かしのテキスト",
		"Watermark opacity (0.0-1.0)":                       "透かしの不透明度（0.0-1.0）",
		"Font size as a fraction of the shorter image side": "画像の短辺に対するフォントサイズの比率",
		"Margin as a fraction of the shorter image side":    "画像の短辺に対する余白の比率",
		"Counter-clockwise rotation in degrees":             "反時計回りの回転角度（度）",
		"Path to a TrueType/OpenType font file":             "TrueType/OpenTypeフォントファイルのパス",

		// Logging flags
		"Log level (debug, info, warn, error)":               "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                            "全てのログ出力を抑制",
		"Output execution summary to file (Markdown format)": "実行サマリーをファイルに出力（Markdown形式）",

		// Debug flags
		"Directory for intermediate text layers and overlays": "中間テキストレイヤーとオーバーレイの出力先",

		// Summary output
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Watermark Summary":     "透かしサマリー",
		"Input Directory":       "入力ディレクトリ",
		"Output Directory":      "出力ディレクトリ",
		"Succeeded":             "成功",
		"Failed":                "失敗",
		"Output Size":           "出力サイズ",
		"Duration":              "処理時間",
		"Interrupted":           "中断",
		"file(s) not processed": "件が未処理",
		"Settings":              "設定",
		"Text":                  "テキスト",
		"Opacity":               "不透明度",
		"Scale":                 "スケール",
		"Margin":                "余白",
		"Angle":                 "角度",
		"Font":                  "フォント",
		"Recursive":             "再帰",
		"JPEG Quality":          "JPEG品質",
		"WebP Quality":          "WebP品質",
		"Failures":              "失敗したファイル",
		"File":                  "ファイル",
		"Stage":                 "段階",
		"Error":                 "エラー",
		"None":                  "なし",
		"Yes":                   "はい",
		"No":                    "いいえ",
		"Generated by":          "生成:",
	})

	// Register Chinese translations for CLI messages.
	l10n.Register("zh", l10n.LexiconMap{
		"Input and Output": "输入与输出",
		"Watermark":        "水印",
		"Logging":          "日志",
		"Debug":            "调试",

		"Stamp a text watermark onto every image in a directory tree": "为目录树中的每张图片添加文字水印",

		"Input directory to scan for images":                      "要扫描图片的输入目录",
		"Output directory (default: <input>/watermarked)":         "输出目录（默认: <input>/watermarked）",
		"Only process images directly inside the input directory": "只处理输入目录下的直接图片",
		"YAML configuration file":                                 "YAML 配置文件",

		"Watermark text":                                    "水印文字",
		"Watermark opacity (0.0-1.0)":                       "水印透明度（0.0-1.0）",
		"Font size as a fraction of the shorter image side": "字号占图片短边的比例",
		"Margin as a fraction of the shorter image side":    "边距占图片短边的比例",
		"Counter-clockwise rotation in degrees":             "逆时针旋转角度",
		"Path to a TrueType/OpenType font file":             "TrueType/OpenType 字体文件路径",

		"Log level (debug, info, warn, error)":               "日志级别（debug, info, warn, error）",
		"Suppress all log output":                            "关闭所有日志输出",
		"Output execution summary to file (Markdown format)": "将执行摘要输出到文件（Markdown 格式）",

		"Directory for intermediate text layers and overlays": "中间文字图层与叠加层的输出目录",

		"Failed to write summary: %s": "写入摘要失败: %s",

		"Watermark Summary": "水印摘要",
		"Settings":          "设置",
		"Failures":          "失败文件",
		"None":              "无",
		"Generated by":      "生成:",
	})
}
