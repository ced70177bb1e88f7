package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

func main() {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("==== StationBoard CLI ====")
		fmt.Println("1) Health check API")
		fmt.Println("2) Tablero de estación")
		fmt.Println("3) Tablero de aeropuerto")
		fmt.Println("4) Estadísticas del caché")
		fmt.Println("5) Salir")
		fmt.Print("Opción: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			doHealthCheck()
		case "2":
			doBoard(reader, "/station/")
		case "3":
			doBoard(reader, "/airport/")
		case "4":
			doGet("/api/stats/cache")
		case "5":
			fmt.Println("Chau")
			return
		default:
			fmt.Println("Opción inválida")
		}
		fmt.Println()
	}
}

func baseURL() string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://127.0.0.1:8080"
	}
	return strings.TrimRight(base, "/")
}

func doHealthCheck() {
	resp, err := http.Get(baseURL() + "/api/health")
	if err != nil {
		fmt.Println("Health: ERROR:", err)
		return
	}
	defer resp.Body.Close()
	fmt.Println("Health status:", resp.Status)
}

func doBoard(reader *bufio.Reader, path string) {
	fmt.Print("Código de terminal: ")
	code, _ := reader.ReadString('\n')
	code = strings.TrimSpace(code)
	if code == "" {
		fmt.Println("Se necesita un código")
		return
	}
	doGet(path + code)
}

// doGet imprime la respuesta JSON indentada, o el cuerpo crudo si no es JSON.
func doGet(path string) {
	resp, err := http.Get(baseURL() + path)
	if err != nil {
		fmt.Println("ERROR:", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Println("ERROR leyendo respuesta:", err)
		return
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Printf("%s: %s\n", resp.Status, body)
		return
	}
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Printf("%s:\n%s\n", resp.Status, out)
}
