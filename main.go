// Betty - C style checker
// 检查每个文件的函数个数、每个函数的行数和每行的列数
//
// Copyright (c) 2024-2026 lynx-lee
// License: MIT

package main

import "betty/cmd"

// main 程序入口函数
// 调用 cmd.Execute() 启动命令行应用
func main() {
	cmd.Execute()
}
