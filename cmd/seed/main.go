package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sjlee/order-api/config"
	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/internal/app/repository"
	"github.com/sjlee/order-api/internal/db"
	"github.com/xuri/excelize/v2"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Repository 생성
	productRepo := repository.NewProductRepository(db.GetDB())

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 배치로 저장
	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

// readProductsFromXLSX는 상품 시트와 옵션 시트를 읽어 상품 목록을 조립합니다.
//
// 상품 시트(첫 번째 시트) 컬럼:
//
//	productCode | brandName | productName | price | salePrice | discountRate | shippingFee | sellingStatus
//
// 옵션 시트(두 번째 시트, 선택) 컬럼:
//
//	productCode | optionName | optionType | optionValue | optionPrice
func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	productIndex := make(map[string]int) // productCode -> products 인덱스
	skippedCount := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 8 {
			skippedCount++
			continue
		}

		productCode := strings.TrimSpace(row[0])
		brandName := strings.TrimSpace(row[1])
		productName := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])
		salePriceStr := strings.TrimSpace(row[4])
		discountRateStr := strings.TrimSpace(row[5])
		shippingFeeStr := strings.TrimSpace(row[6])
		sellingStatus := strings.TrimSpace(row[7])

		if productCode == "" || brandName == "" || productName == "" {
			skippedCount++
			continue
		}

		// 중복 상품 코드 제거
		if _, exists := productIndex[productCode]; exists {
			skippedCount++
			continue
		}

		price, errPrice := strconv.ParseInt(priceStr, 10, 64)
		salePrice, errSale := strconv.ParseInt(salePriceStr, 10, 64)
		if errPrice != nil || errSale != nil || price < 0 || salePrice < 0 {
			skippedCount++
			continue
		}

		discountRate, err := strconv.ParseFloat(discountRateStr, 64)
		if err != nil {
			discountRate = 0
		}

		shippingFee, err := strconv.ParseInt(shippingFeeStr, 10, 64)
		if err != nil || shippingFee < 0 {
			shippingFee = 0
		}

		status := model.SellingStatus(sellingStatus)
		switch status {
		case model.SellingStatusOpen, model.SellingStatusStop, model.SellingStatusSoldout:
		default:
			status = model.SellingStatusOpen
		}

		product := model.Product{
			BrandName:     brandName,
			ProductName:   productName,
			ProductCode:   productCode,
			DiscountRate:  discountRate,
			SellingStatus: status,
			Price:         price,
			SalePrice:     salePrice,
			ShippingFee:   shippingFee,
		}

		productIndex[productCode] = len(products)
		products = append(products, product)

		// 진행 상황 출력 (1000개마다)
		if len(products)%1000 == 0 {
			fmt.Printf("Processed %d products...\n", len(products))
		}
	}

	optionCount, err := attachOptionsFromXLSX(f, products, productIndex)
	if err != nil {
		return nil, err
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Option details: %d\n", optionCount)
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}

// attachOptionsFromXLSX는 두 번째 시트의 옵션 행을 상품에 붙입니다.
// 옵션 시트가 없으면 아무것도 하지 않습니다.
func attachOptionsFromXLSX(f *excelize.File, products []model.Product, productIndex map[string]int) (int, error) {
	optionSheet := f.GetSheetName(1)
	if optionSheet == "" {
		return 0, nil
	}

	fmt.Printf("Reading option sheet: %s\n", optionSheet)

	rows, err := f.GetRows(optionSheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read option rows: %w", err)
	}

	// (products 인덱스, 옵션명) -> 옵션 그룹 인덱스
	groupIndex := make(map[string]int)
	optionCount := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 5 {
			continue
		}

		productCode := strings.TrimSpace(row[0])
		optionName := strings.TrimSpace(row[1])
		optionType := strings.TrimSpace(row[2])
		optionValue := strings.TrimSpace(row[3])
		optionPriceStr := strings.TrimSpace(row[4])

		pi, exists := productIndex[productCode]
		if !exists || optionName == "" || optionValue == "" {
			continue
		}

		optionPrice, err := strconv.ParseInt(optionPriceStr, 10, 64)
		if err != nil || optionPrice < 0 {
			optionPrice = 0
		}

		otype := model.OptionType(optionType)
		switch otype {
		case model.OptionTypeSelect, model.OptionTypeInput, model.OptionTypeAddProduct:
		default:
			otype = model.OptionTypeSelect
		}

		groupKey := fmt.Sprintf("%d|%s", pi, optionName)
		gi, exists := groupIndex[groupKey]
		if !exists {
			products[pi].OptionGroups = append(products[pi].OptionGroups, model.OptionGroup{
				OptionName: optionName,
				OptionType: otype,
			})
			gi = len(products[pi].OptionGroups) - 1
			groupIndex[groupKey] = gi
		}

		group := &products[pi].OptionGroups[gi]
		group.OptionDetails = append(group.OptionDetails, model.OptionDetail{
			OptionValue: optionValue,
			OptionPrice: optionPrice,
		})
		optionCount++
	}

	return optionCount, nil
}
