package services

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "People"

// ExportService renders the people list as an Excel workbook
type ExportService struct {
	peopleService PeopleService
}

func NewExportService(peopleService PeopleService) *ExportService {
	return &ExportService{
		peopleService: peopleService,
	}
}

// ExportPeople builds an xlsx workbook with a header row and one row per
// person. An empty store surfaces as ErrNotFound, like every other read.
func (s *ExportService) ExportPeople() (*bytes.Buffer, error) {
	people, err := s.peopleService.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"ID", "First Name", "Last Name", "Birth Date", "Photo"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, person := range people {
		values := []interface{}{
			person.ID,
			person.FirstName,
			person.LastName,
			person.BirthDate.Format("2006-01-02"),
			person.Photo,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}
