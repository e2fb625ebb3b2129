package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level messages (info)
		"Processed: %s -> %s":                         "処理完了: %s -> %s",
		"Failed: %s | %s":                             "失敗: %s | %s",
		"Done. Succeeded %d/%d. Output directory: %s": "完了。成功 %d/%d。出力ディレクトリ: %s",
		"Found %d image(s) in %s":                     "%[2]s で %[1]d 件の画像が見つかりました",
		"Interrupted, stopping after current file...": "中断されました。現在のファイルの処理後に停止します...",
		"Summary written to %s":                       "サマリーを %s に書き出しました",
		"Failed to save run report: %s":               "実行レポートの保存に失敗しました: %s",

		// Font component
		"Font file not found: %s":               "フォントファイルが見つかりません: %s",
		"No system font found, using %s":        "システムフォントが見つかりません。%s を使用します",
		"Using font %s":                         "フォント %s を使用します",
		"Font %s unusable at size %d, using %s": "フォント %s はサイズ %d で使用できません。%s を使用します",

		// Composite component
		"Text layer %dx%d, font size %d, margin %d": "テキストレイヤー %dx%d, フォントサイズ %d, 余白 %d",
		"Watermark anchored at (%d,%d)":             "透かしの位置 (%d,%d)",
		"Failed to save debug image: %s":            "デバッグ画像の保存に失敗しました: %s",

		// Scan component
		"Skipping unresolvable path %s: %s": "解決できないパスをスキップします %s: %s",

		// Errors
		"Input directory does not exist: %s":    "入力ディレクトリが存在しません: %s",
		"Failed to create output directory: %s": "出力ディレクトリを作成できません: %s",
	})

	l10n.Register("zh", l10n.LexiconMap{
		"Processed: %s -> %s":                         "已处理: %s -> %s",
		"Failed: %s | %s":                             "处理失败: %s | %s",
		"Done. Succeeded %d/%d. Output directory: %s": "完成。成功 %d/%d。输出目录: %s",
		"Found %d image(s) in %s":                     "在 %[2]s 中找到 %[1]d 张图片",
		"Interrupted, stopping after current file...": "已中断，当前文件处理完成后停止...",
		"Summary written to %s":                       "摘要已写入 %s",
		"Failed to save run report: %s":               "保存运行报告失败: %s",
		"Font file not found: %s":                     "未找到字体文件: %s",
		"No system font found, using %s":              "未找到系统字体，使用 %s",
		"Using font %s":                               "使用字体 %s",
		"Font %s unusable at size %d, using %s":       "字体 %s 无法用于字号 %d，改用 %s",
		"Text layer %dx%d, font size %d, margin %d":   "文字图层 %dx%d，字号 %d，边距 %d",
		"Watermark anchored at (%d,%d)":               "水印位置 (%d,%d)",
		"Failed to save debug image: %s":              "保存调试图像失败: %s",
		"Skipping unresolvable path %s: %s":           "跳过无法解析的路径 %s: %s",
		"Input directory does not exist: %s":          "输入目录不存在: %s",
		"Failed to create output directory: %s":       "无法创建输出目录: %s",
	})
}
